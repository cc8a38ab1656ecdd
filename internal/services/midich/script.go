package midich

// bindingName is the runtime binding the save hook reports through.
const bindingName = "__chartSave"

// saveHookScript runs before any converter script. It pins window.saveAs to
// a function that serialises the blob and hands it to the binding, and
// ignores later assignments from FileSaver.js.
const saveHookScript = `(() => {
  const deliver = (blob, filename) => {
    const name = typeof filename === 'string' && filename ? filename : '';
    const reader = new FileReader();
    reader.onload = () => {
      const url = String(reader.result || '');
      const comma = url.indexOf(',');
      window.` + bindingName + `(JSON.stringify({ filename: name, data: comma >= 0 ? url.slice(comma + 1) : '' }));
    };
    reader.onerror = () => {
      window.` + bindingName + `(JSON.stringify({ filename: name, error: String(reader.error) }));
    };
    reader.readAsDataURL(blob instanceof Blob ? blob : new Blob([blob]));
  };
  Object.defineProperty(window, 'saveAs', {
    configurable: false,
    get: () => deliver,
    set: () => {},
  });
})();`
